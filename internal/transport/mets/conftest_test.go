package mets

// sampleMETS describes a three page print with two movements. Page 2 has no AUDIO file.
const sampleMETS = `<?xml version="1.0" encoding="UTF-8"?>
<mets:mets xmlns:mets="http://www.loc.gov/METS/" xmlns:mods="http://www.loc.gov/mods/v3"
    xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:dv="http://dfg-viewer.de/">
  <mets:dmdSec ID="DMDLOG_0000">
    <mets:mdWrap MDTYPE="MODS"><mets:xmlData>
      <mods:mods>
        <mods:titleInfo type="alternative"><mods:title>Flötensonaten</mods:title></mods:titleInfo>
        <mods:titleInfo>
          <mods:nonSort>Die</mods:nonSort>
          <mods:title>Sonaten</mods:title>
          <mods:subTitle>für Flöte und Basso continuo</mods:subTitle>
        </mods:titleInfo>
        <mods:name type="personal">
          <mods:namePart type="family">Bach</mods:namePart>
          <mods:namePart type="given">Johann Sebastian</mods:namePart>
          <mods:role><mods:roleTerm type="code">aut</mods:roleTerm></mods:role>
        </mods:name>
        <mods:name type="personal">
          <mods:displayForm>Breitkopf</mods:displayForm>
          <mods:role><mods:roleTerm type="code">pbl</mods:roleTerm></mods:role>
        </mods:name>
        <mods:originInfo>
          <mods:place><mods:placeTerm type="text">Leipzig</mods:placeTerm></mods:place>
          <mods:dateIssued>1747</mods:dateIssued>
        </mods:originInfo>
        <mods:language><mods:languageTerm>ger</mods:languageTerm></mods:language>
        <mods:classification>Musik</mods:classification>
        <mods:classification>Drucke</mods:classification>
        <mods:genre>Noten</mods:genre>
        <mods:recordInfo><mods:recordIdentifier>rec-1001</mods:recordIdentifier></mods:recordInfo>
      </mods:mods>
    </mets:xmlData></mets:mdWrap>
  </mets:dmdSec>
  <mets:dmdSec ID="DMDLOG_0001">
    <mets:mdWrap MDTYPE="MODS"><mets:xmlData>
      <mods:mods><mods:titleInfo><mods:title>Erster Satz</mods:title></mods:titleInfo></mods:mods>
    </mets:xmlData></mets:mdWrap>
  </mets:dmdSec>
  <mets:amdSec ID="AMD">
    <mets:rightsMD ID="RIGHTS">
      <mets:mdWrap MDTYPE="OTHER" OTHERMDTYPE="DVRIGHTS"><mets:xmlData>
        <dv:rights><dv:owner>Default Library</dv:owner></dv:rights>
      </mets:xmlData></mets:mdWrap>
    </mets:rightsMD>
  </mets:amdSec>
  <mets:fileSec>
    <mets:fileGrp USE="DEFAULT">
      <mets:file ID="IMG_1" MIMETYPE="image/jpeg"><mets:FLocat LOCTYPE="URL" xlink:href="https://example.org/1.jpg"/></mets:file>
      <mets:file ID="IMG_2" MIMETYPE="image/jpeg"><mets:FLocat LOCTYPE="URL" xlink:href="https://example.org/2.jpg"/></mets:file>
      <mets:file ID="IMG_3" MIMETYPE="image/jpeg"><mets:FLocat LOCTYPE="URL" xlink:href="https://example.org/3.jpg"/></mets:file>
    </mets:fileGrp>
    <mets:fileGrp USE="AUDIO">
      <mets:file ID="AUD_1" MIMETYPE="audio/mpeg"><mets:FLocat LOCTYPE="URL" xlink:href="https://example.org/1.mp3"/></mets:file>
      <mets:file ID="AUD_3" MIMETYPE="audio/mpeg"><mets:FLocat LOCTYPE="URL" xlink:href="https://example.org/3.mp3"/></mets:file>
    </mets:fileGrp>
    <mets:fileGrp USE="FULLTEXT"/>
  </mets:fileSec>
  <mets:structMap TYPE="LOGICAL">
    <mets:div ID="LOG_0000" TYPE="musical_work" DMDID="DMDLOG_0000" ADMID="AMD">
      <mets:div ID="LOG_0001" TYPE="movement" LABEL="Erster Satz" DMDID="DMDLOG_0001">
        <mets:div ID="LOG_0002" TYPE="section" LABEL="Adagio"/>
      </mets:div>
      <mets:div ID="LOG_0003" TYPE="movement" LABEL="Zweiter Satz"/>
    </mets:div>
  </mets:structMap>
  <mets:structMap TYPE="PHYSICAL">
    <mets:div ID="PHYS_0000" TYPE="physSequence">
      <mets:div ID="PHYS_0002" TYPE="page" ORDER="2" ORDERLABEL="2">
        <mets:fptr FILEID="IMG_2"/>
      </mets:div>
      <mets:div ID="PHYS_0001" TYPE="page" ORDER="1" ORDERLABEL="1" LABEL="Titelblatt">
        <mets:fptr FILEID="IMG_1"/>
        <mets:fptr><mets:area FILEID="AUD_1" BEGIN="0" END="90" BETYPE="TIME"/></mets:fptr>
      </mets:div>
      <mets:div ID="PHYS_0003" TYPE="page" ORDER="3" ORDERLABEL="3">
        <mets:fptr FILEID="IMG_3"/>
        <mets:fptr FILEID="AUD_3"/>
      </mets:div>
    </mets:div>
  </mets:structMap>
  <mets:structLink>
    <mets:smLink xlink:from="LOG_0000" xlink:to="PHYS_0000"/>
    <mets:smLink xlink:from="LOG_0001" xlink:to="PHYS_0001"/>
    <mets:smLink xlink:from="LOG_0001" xlink:to="PHYS_0002"/>
    <mets:smLink xlink:from="LOG_0003" xlink:to="PHYS_0003"/>
  </mets:structLink>
</mets:mets>`
